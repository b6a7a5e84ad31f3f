package logging

import (
	"log/slog"
	"testing"
)

func TestWithCommon(t *testing.T) {
	cases := []struct {
		name     string
		initial  []slog.Attr
		service  string
		version  string
		wantKeys []string
	}{
		{name: "both", service: "matrix-screener", version: "v1", wantKeys: []string{FieldService, FieldVersion}},
		{name: "service only", service: "matrix-screener", wantKeys: []string{FieldService}},
		{name: "keeps existing", initial: []slog.Attr{slog.String(FieldLeague, "bl1")}, wantKeys: []string{FieldLeague}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attrs := WithCommon(tc.initial, tc.service, tc.version)
			if len(attrs) != len(tc.wantKeys) {
				t.Fatalf("expected %d attrs, got %+v", len(tc.wantKeys), attrs)
			}
			for i, key := range tc.wantKeys {
				if attrs[i].Key != key {
					t.Fatalf("attr %d: expected key %s, got %s", i, key, attrs[i].Key)
				}
			}
		})
	}
}
