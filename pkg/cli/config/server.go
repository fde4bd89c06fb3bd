package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr       string
	CORSOrigin string
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("CRASHLENS_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringFlag{
			Name:        "cors-origin",
			Usage:       "Allowed CORS origin of the REST API",
			Value:       "*",
			Sources:     cli.EnvVars("CRASHLENS_CORS_ORIGIN"),
			Destination: &s.CORSOrigin,
		},
	}
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.String("cors_origin", s.CORSOrigin),
	)
}
