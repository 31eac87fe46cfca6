package ui

import (
	"net/http"
	"os"
	"runtime"

	"oficina-desk/internal/cache"
	"oficina-desk/internal/models"
	"oficina-desk/internal/queries"

	"github.com/shirou/gopsutil/v3/process"
)

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.q.Statistics(r.Context())
	v := view{Title: "Painel"}
	if err != nil {
		v.Error = loadError(err)
		v.Data = &models.Statistics{}
	} else {
		v.Data = stats
		v.WatchKeys = watch(queries.KeyStatistics())
	}
	s.render(w, "dashboard", v)
}

type diagnosticsData struct {
	CPUPercent float64
	MemoryMB   float64
	Goroutines int
	CacheStats cache.Stats
}

func (s *Server) diagnostics(w http.ResponseWriter, r *http.Request) {
	data := diagnosticsData{
		Goroutines: runtime.NumGoroutine(),
		CacheStats: s.q.Store().Stats(),
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if cpu, err := proc.CPUPercent(); err == nil {
			data.CPUPercent = cpu
		}
		if mem, err := proc.MemoryInfo(); err == nil {
			data.MemoryMB = float64(mem.RSS) / 1024 / 1024
		}
	}
	s.render(w, "diagnostics", view{Title: "Diagnóstico", Data: data})
}
