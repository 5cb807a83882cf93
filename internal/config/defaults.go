package config

const (
	defaultLibraryDir   = "~/.local/share/streamsift/watchlists"
	defaultCacheDB      = "~/.local/share/streamsift/cache.db"
	defaultLogDir       = "~/.local/share/streamsift/logs"
	defaultTMDBBaseURL  = "https://api.themoviedb.org/3"
	defaultTMDBLanguage = "en-US"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultRegion       = "GB"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			CacheDB:    defaultCacheDB,
			LogDir:     defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Regions: Regions{
			Default: []string{defaultRegion},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
