package tls

import (
	"net"
	"net/http"

	"giftlist-api/internal/logging"
	"github.com/sirupsen/logrus"
)

// RedirectHandler answers every plain-HTTP request with a permanent redirect
// to the HTTPS listener.
func RedirectHandler(httpsPort string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}

		target := "https://" + host
		if httpsPort != "443" {
			target += ":" + httpsPort
		}
		target += r.RequestURI

		logging.Logger.WithFields(logrus.Fields{
			"client_ip": r.RemoteAddr,
			"target":    target,
		}).Debug("Redirecting to HTTPS")

		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})
}
