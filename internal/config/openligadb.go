package config

// OpenLigaDBConfig controls how we talk to the OpenLigaDB API.
type OpenLigaDBConfig struct {
	BaseURL string
	Timeout Duration
}

func loadOpenLigaDB(file fileOpenLigaDB) OpenLigaDBConfig {
	return OpenLigaDBConfig{
		BaseURL: envOrDefault(envOpenLigaBaseURL, stringOr(file.BaseURL, defaultOpenLigaURL)),
		Timeout: durationEnvOrDefault(envOpenLigaTimeout, durationOr(file.Timeout, defaultOpenLigaWait)),
	}
}
