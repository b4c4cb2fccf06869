package instance

import "os"

// GetID identifies the running process in logs: VISION_INSTANCE_ID, then the
// platform's DYNO name, then the hostname.
func GetID() string {
	for _, key := range []string{"VISION_INSTANCE_ID", "DYNO"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
