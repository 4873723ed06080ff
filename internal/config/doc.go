// Package config handles loading and saving album-table settings.
//
// Settings are stored as YAML, by default in
// $XDG_CONFIG_HOME/album-table/config.yaml:
//
//	term: michael jackson
//	page_size: 10
//	paginated: true
//	cache:
//	  enabled: true
//	  ttl_seconds: 3600
//	log:
//	  level: info
//
// Keys missing from the file keep their defaults. Environment variables
// (ALBUM_TABLE_TERM, ALBUM_TABLE_PAGE_SIZE, ALBUM_TABLE_LOG_LEVEL, ...)
// override the file, and command line flags override both.
//
// # Usage
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    return err
//	}
//	if err := settings.ApplyEnv(os.LookupEnv); err != nil {
//	    return err
//	}
//	if err := settings.Validate(); err != nil {
//	    return err
//	}
package config
