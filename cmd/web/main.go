package main

import (
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedefender/internal/config"
	gameconfig "github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/scoreboard"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"rank": func(i int) int { return i + 1 },
}).Parse(htmlPage))

// pageData is what index.html renders.
type pageData struct {
	SSHHost string
	Scores  []scoreboard.Entry
}

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	scoreboardPath := config.GetEnv("SCOREBOARD_PATH", "")

	http.Handle("/", newIndexHandler(sshHost, scoreboardPath, logger))

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newIndexHandler serves the landing page. The scoreboard file is re-read on
// every request since the SSH server owns and rewrites it.
func newIndexHandler(sshHost, scoreboardPath string, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		data := pageData{SSHHost: sshHost}
		if scoreboardPath != "" {
			board, err := scoreboard.Open(scoreboardPath, gameconfig.TopScoreCount)
			if err != nil {
				logger.Error("failed to read scoreboard", "err", err)
			} else {
				data.Scores = board.Top(gameconfig.TopScoreCount)
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			logger.Error("failed to render page", "err", err)
		}
	})
}
