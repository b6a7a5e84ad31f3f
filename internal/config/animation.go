package config

// AnimationConfig controls the falling-glyph background.
type AnimationConfig struct {
	Interval Duration
	Width    int // initial surface size in pixels, until a client reports its own
	Height   int
}

// CORSConfig lists origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

func loadAnimation(file fileAnimation) AnimationConfig {
	return AnimationConfig{
		Interval: durationEnvOrDefault(envAnimInterval, durationOr(file.Interval, defaultAnimInterval)),
		Width:    intEnvOrDefault(envAnimWidth, intOr(file.Width, defaultAnimWidth)),
		Height:   intEnvOrDefault(envAnimHeight, intOr(file.Height, defaultAnimHeight)),
	}
}

func loadCORS(file fileCORS) CORSConfig {
	fallback := splitList(defaultCORSOrigins)
	if len(file.AllowedOrigins) > 0 {
		fallback = file.AllowedOrigins
	}
	return CORSConfig{AllowedOrigins: listEnvOrDefault(envCORSOrigins, fallback)}
}
