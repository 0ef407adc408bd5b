package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/coddhisatva/Synthaia-public-version/config"
	"github.com/coddhisatva/Synthaia-public-version/db"
	"github.com/coddhisatva/Synthaia-public-version/gen"
	"github.com/coddhisatva/Synthaia-public-version/model"
	"github.com/coddhisatva/Synthaia-public-version/song"
	"github.com/coddhisatva/Synthaia-public-version/util"
)

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "listen port")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the song generation HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// jobTable tracks generation jobs and persists snapshots to disk so a
// restart doesn't lose finished song paths. Writes are debounced since
// every pipeline step updates its job.
type jobTable struct {
	mu      sync.Mutex
	jobs    map[string]*model.JobStatus
	path    string
	persist func(f func())
}

func newJobTable(path string) *jobTable {
	t := &jobTable{
		jobs:    make(map[string]*model.JobStatus),
		path:    path,
		persist: debounce.New(2 * time.Second),
	}
	t.load()
	return t
}

func (t *jobTable) load() {
	raw, err := os.ReadFile(t.path)
	if err != nil {
		return
	}
	var jobs map[string]*model.JobStatus
	if json.Unmarshal(raw, &jobs) != nil {
		return
	}
	// anything mid-flight when the server died is lost
	for id, j := range jobs {
		if j.Status == "done" || j.Status == "error" {
			t.jobs[id] = j
		}
	}
}

func (t *jobTable) save() {
	t.mu.Lock()
	raw, err := json.Marshal(t.jobs)
	t.mu.Unlock()
	if err != nil {
		return
	}
	os.MkdirAll(filepath.Dir(t.path), 0777)
	if err := os.WriteFile(t.path, raw, 0644); err != nil {
		log.Printf("could not persist job table: %v", err)
	}
}

func (t *jobTable) get(id string) (model.JobStatus, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	j, ok := t.jobs[id]
	if !ok {
		return model.JobStatus{}, false
	}
	return *j, true
}

func (t *jobTable) put(j model.JobStatus) {
	t.mu.Lock()
	t.jobs[j.JobID] = &j
	t.mu.Unlock()
	t.persist(t.save)
}

type server struct {
	cfg  config.Config
	jobs *jobTable
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func (s *server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Theme == "" {
		writeError(w, http.StatusBadRequest, "theme is required")
		return
	}

	cfg := s.cfg
	if req.Provider != "" {
		cfg.Provider = req.Provider
	}
	client, err := gen.NewClient(cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.NewString()
	s.jobs.put(model.JobStatus{JobID: id, Status: "pending"})

	go s.runJob(id, cfg, client, req)

	writeJSON(w, http.StatusAccepted, model.CreateSongResponse{JobID: id})
}

func (s *server) runJob(id string, cfg config.Config, client gen.Client, req model.CreateSongRequest) {
	progress := func(step, total int, message string) {
		s.jobs.put(model.JobStatus{
			JobID:      id,
			Status:     "running",
			Step:       step,
			Total:      total,
			Message:    message,
			Percentage: util.Min(100, step*100/total),
		})
	}

	res, err := song.Create(context.Background(), cfg, client, req.Theme, req.Render, progress)
	if err != nil {
		sentry.CaptureException(err)
		s.jobs.put(model.JobStatus{JobID: id, Status: "error", Error: err.Error()})
		return
	}

	s.jobs.put(model.JobStatus{
		JobID:      id,
		Status:     "done",
		Percentage: 100,
		LyricsPath: res.LyricsPath,
		MidiPath:   res.MidiPath,
		AudioPath:  res.AudioPath,
	})

	if cfg.SongDBEndpoint != "" {
		meta := model.SongMetadata{
			Theme:      res.Theme,
			LyricsPath: res.LyricsPath,
			MidiPath:   res.MidiPath,
			AudioPath:  res.AudioPath,
			CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := db.PutSongMetadata(cfg.SongDBEndpoint, id, meta); err != nil {
			sentry.CaptureException(err)
			log.Printf("could not record song %v: %v", id, err)
		}
	}
}

func (s *server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	j, ok := s.jobs.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no such job")
		return
	}
	writeJSON(w, http.StatusOK, j)
}

// handleListSongs looks up recorded songs by id, e.g.
// GET /api/songs?ids=a,b,c
func (s *server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	if s.cfg.SongDBEndpoint == "" {
		writeError(w, http.StatusNotImplemented, "song database is not configured")
		return
	}

	var ids []string
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		writeError(w, http.StatusBadRequest, "ids query parameter is required")
		return
	}

	res, err := db.GetSongMetadatas(s.cfg.SongDBEndpoint, ids)
	if err != nil {
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func serve() {
	cfg := config.FromEnv()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.Printf("sentry init failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	s := &server{
		cfg:  cfg,
		jobs: newJobTable(filepath.Join(cfg.OutputDir, "jobs.json")),
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/api/songs", s.handleCreateSong).Methods("POST")
	router.HandleFunc("/api/songs", s.handleListSongs).Methods("GET")
	router.HandleFunc("/api/songs/{id}", s.handleGetSong).Methods("GET")
	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	handler := cors.Default().Handler(router)
	addr := fmt.Sprintf(":%d", servePort)
	log.Printf("listening on %v", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
