package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
)

// CrashReport captures a panic, logs it, and writes a report file into dir
// before re-panicking. Call it with defer at the top of the daemon's main
// goroutine:
//
//	defer logging.CrashReport(log, stateDir)
func CrashReport(log zerolog.Logger, dir string) {
	r := recover()
	if r == nil {
		return
	}
	stack := debug.Stack()
	log.Error().
		Interface("panic", r).
		Str("go", runtime.Version()).
		Msg("panic, writing crash report")

	if dir != "" {
		path := filepath.Join(dir, "crashes", time.Now().Format("crash-20060102-150405.txt"))
		if err := writeCrashReport(path, r, stack); err != nil {
			log.Error().Err(err).Msg("crash report write failed")
		} else {
			log.Error().Str("report", path).Msg("crash report written")
		}
	}
	panic(r)
}

func writeCrashReport(path string, r any, stack []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	body := fmt.Sprintf("panic: %v\n\ngo: %s %s/%s cpus=%d\nalloc=%dKB sys=%dKB gc=%d\n\n%s",
		r, runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.NumCPU(),
		m.Alloc/1024, m.Sys/1024, m.NumGC, stack)
	return os.WriteFile(path, []byte(body), 0o600)
}
