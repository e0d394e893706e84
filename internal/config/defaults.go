package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel = "info"
	DefaultJSONLog  = false

	// Desktop browser identity; the listings site serves a stripped page
	// to unknown agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/115.0 Safari/537.36"
	DefaultReferer = "https://www.baidu.com"

	// %s is replaced with the city subdomain, e.g. sh for Shanghai.
	DefaultBaseURLTemplate = "https://%s.lianjia.com/zufang/"

	DefaultHTTPTimeout = 10 * time.Second
	DefaultPages       = 1
	DefaultDelay       = 1 * time.Second
	DefaultRetries     = 0
	MaxPages           = 100
)
