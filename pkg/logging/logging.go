// Package logging configures the SDK's structured logger and provides the
// request/response logging helpers used by the transport layer.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger for the given environment: debug-level text output
// in development, info-level JSON in production.
func New(development bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if development {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

// Request logs an outgoing API request at debug level.
func Request(log *logrus.Logger, requestID, method, url string, body any) {
	fields := logrus.Fields{
		"requestId": requestID,
		"method":    method,
		"url":       url,
	}
	if body != nil {
		fields["body"] = body
	}
	log.WithFields(fields).Debug("api request")
}

// Response logs a completed API response at debug level.
func Response(log *logrus.Logger, requestID, url string, status int, body []byte) {
	log.WithFields(logrus.Fields{
		"requestId": requestID,
		"url":       url,
		"status":    status,
		"body":      string(body),
	}).Debug("api response")
}

// Failure logs a failed API call with full detail.
func Failure(log *logrus.Logger, requestID, url string, err error) {
	log.WithFields(logrus.Fields{
		"requestId": requestID,
		"url":       url,
	}).WithError(err).Error("api error")
}
