// internal/server/server.go
package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"gemgen/internal/builder"
)

// Run builds the capsule once, then serves an HTML preview of the generated
// gemtext on localhost while watching the source paths for changes. Every
// rebuild pushes a reload message to connected browsers.
func Run(port int, outputDir string, watchPaths []string, buildFunc func(builder.BuildOptions) error, opts builder.BuildOptions) error {
	opts.CleanDestination = true
	if err := buildFunc(opts); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	hub := newHub()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	// Use a map to track watched directories and avoid duplicates.
	watchedDirs := make(map[string]bool)

	addWatch := func(dir string) {
		dir = filepath.Clean(dir)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				log.Printf("Error adding watch on %s: %v", dir, err)
			} else {
				fmt.Printf("Watching directory: %s\n", dir)
				watchedDirs[dir] = true
			}
		}
	}

	for _, path := range watchPaths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("could not stat path %s: %w", path, err)
		}

		if info.IsDir() {
			// Watch the whole subtree; fsnotify is not recursive.
			if err := filepath.Walk(path, func(walkPath string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() {
					addWatch(walkPath)
				}
				return nil
			}); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", path, err)
			}
		} else {
			// For files, watch their PARENT directory. This handles Vim's save-swap behavior.
			addWatch(filepath.Dir(path))
		}
	}

	opts.CleanDestination = false
	go watchForChanges(watcher, hub, buildFunc, opts)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r)
	})
	mux.Handle("/", previewHandler(outputDir, opts.Unsafe))

	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Previewing capsule on http://localhost%s\n", addr)
	fmt.Println("Press Ctrl+C to stop")
	return http.ListenAndServe(addr, mux)
}

func watchForChanges(watcher *fsnotify.Watcher, hub *Hub, buildFunc func(builder.BuildOptions) error, opts builder.BuildOptions) {
	var lastBuildTime time.Time
	const debounceDuration = 500 * time.Millisecond

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// Create, write, remove and rename all matter; editors
			// disagree on how a save looks to the filesystem.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if time.Since(lastBuildTime) > debounceDuration {
					time.Sleep(100 * time.Millisecond)

					log.Printf("Change detected in %s, rebuilding...", event.Name)
					if err := buildFunc(opts); err != nil {
						log.Printf("Error rebuilding capsule: %v", err)
					} else {
						log.Println("Capsule rebuilt. Triggering reload...")
						hub.broadcastMessage([]byte("reload"))
					}
					lastBuildTime = time.Now()
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// previewHandler maps request paths onto the generated .gmi tree and serves
// each document rendered as HTML. Anything that is not a gemtext file falls
// back to plain file serving.
func previewHandler(outputDir string, unsafe bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

		rel := filepath.Clean(r.URL.Path)
		if rel == "/" || rel == "." {
			rel = "index.gmi"
		}
		target := filepath.Join(outputDir, rel)

		if filepath.Ext(target) != ".gmi" {
			http.ServeFile(w, r, target)
			return
		}

		gmi, err := os.ReadFile(target)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(RenderPreview(string(gmi), unsafe))
	})
}

const liveReloadScript = `
<script>
  (function() {
    let socket = new WebSocket("ws://" + window.location.host + "/ws");
    socket.onmessage = function(event) {
      if (event.data === "reload") {
        console.log("Reloading page...");
        window.location.reload();
      }
    };
    socket.onclose = function() {
      // Don't log on normal close, it's just noise.
    };
    socket.onerror = function(error) {
      console.error("Live reload connection error. Please restart 'gemgen serve'.");
    };
  })();
</script>
`
