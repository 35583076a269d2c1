package web

import (
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"treepaths/internal/listing"
	"treepaths/internal/model"
)

//go:embed static/*
var staticFS embed.FS

//go:embed help.md
var helpMD string

// maxListingBytes bounds the request body of /api/convert.
const maxListingBytes = 8 << 20

// ConvertRequest is the body of POST /api/convert.
type ConvertRequest struct {
	Listing   string `json:"listing"`
	Ignore    string `json:"ignore"` // May contain escapes like \u00A0
	Indent    int    `json:"indent"`
	Prefix    string `json:"prefix"`
	Unix      bool   `json:"unix"`
	Blocklist string `json:"blocklist"`
	Strict    bool   `json:"strict"`
	SkipEmpty bool   `json:"skipEmpty"`
}

// ConvertResponse is returned by POST /api/convert.
type ConvertResponse struct {
	Paths    []string      `json:"paths"`
	Entries  []model.Entry `json:"entries"`
	Warnings []string      `json:"warnings,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
}

// Handler returns the HTTP routes of web mode.
func Handler(logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("/", http.FileServer(http.FS(subFS)))

	// API Endpoints
	mux.HandleFunc("/api/convert", func(w http.ResponseWriter, r *http.Request) {
		handleConvert(w, r, logger)
	})
	mux.HandleFunc("/api/version", handleVersion)
	mux.HandleFunc("/api/help", handleHelp)
	return mux
}

// StartServer serves web mode on addr until the listener fails.
func StartServer(addr string, logger *log.Logger) error {
	logger.Info("Starting treepaths web server", "url", "http://"+addr)
	return http.ListenAndServe(addr, Handler(logger))
}

func handleConvert(w http.ResponseWriter, r *http.Request, logger *log.Logger) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, errors.New("use POST"))
		return
	}

	var req ConvertRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxListingBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var warnings []string
	ignore, err := listing.Unescape(req.Ignore)
	if err != nil {
		warnings = append(warnings, "ignore list used verbatim: "+err.Error())
		ignore = req.Ignore
	}
	blocklist, err := listing.Unescape(req.Blocklist)
	if err != nil {
		warnings = append(warnings, "blocklist used verbatim: "+err.Error())
		blocklist = req.Blocklist
	}

	cfg := model.Config{
		IgnoreChars:    ignore,
		IndentWidth:    req.Indent,
		Prefix:         req.Prefix,
		Separator:      model.SeparatorWindows,
		Blocklist:      []rune(blocklist),
		Strict:         req.Strict,
		SkipEmptyNames: req.SkipEmpty,
	}
	if req.Unix {
		cfg.Separator = model.SeparatorUnix
	}

	conv, err := listing.New(cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	lines := strings.Split(strings.ReplaceAll(req.Listing, "\r\n", "\n"), "\n")
	resp := ConvertResponse{Paths: []string{}, Entries: []model.Entry{}, Warnings: warnings}
	for e, err := range conv.Entries(slices.Values(lines)) {
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		resp.Paths = append(resp.Paths, e.Path)
		resp.Entries = append(resp.Entries, e)
	}
	logger.Debug("Converted listing", "lines", len(lines), "paths", len(resp.Paths))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"version": model.Version})
}

func handleHelp(w http.ResponseWriter, r *http.Request) {
	// Use the embedded help content
	text := strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)

	w.Header().Set("Content-Type", "text/markdown")
	w.Write([]byte(text))
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var lineErr *listing.LineError
	if errors.As(err, &lineErr) {
		resp.Line = lineErr.Line
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
