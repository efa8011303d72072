package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const storeTimeout = 10 * time.Second

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// shareURL builds the player share link, the only wire format in the system:
// <base>/player/<playerID>. Any string matching that shape is a valid lookup
// key; there is no signature or expiry.
func shareURL(baseURL, playerID string) string {
	return strings.TrimRight(baseURL, "/") + "/player/" + playerID
}
