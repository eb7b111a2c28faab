package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/hastarekha/internal/app"
	"github.com/ayusman/hastarekha/internal/pose"
	"github.com/ayusman/hastarekha/internal/server"
	"github.com/ayusman/hastarekha/internal/store"
	"github.com/ayusman/hastarekha/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device id")
	noTray := flag.Bool("no-tray", false, "run without the system tray")
	flag.Parse()

	fmt.Println("Hastarekha - Palm Scanner")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".hastarekha")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "hastarekha.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Build the scanner
	scanner := app.New(app.Config{
		Store:    st,
		HookDir:  filepath.Join(dataDir, "hooks"),
		CameraID: *cameraID,
		Pose:     pose.DefaultConfig(),
	})

	if err := scanner.LoadCalibration(); err != nil {
		log.Printf("Failed to load calibration, using defaults: %v", err)
	}
	if err := scanner.DiscoverHooks(); err != nil {
		log.Printf("Hook discovery failed: %v", err)
	} else if n := len(scanner.HookManager().List()); n > 0 {
		fmt.Printf("Discovered %d capture hooks\n", n)
	}

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure the server
	srv := server.New(server.Config{
		StaticDir:  webDir,
		Store:      st,
		Camera:     scanner.Camera(),
		Capturer:   scanner,
		Calibrator: scanner,
	})

	// The pipeline pushes every assessment to connected browsers.
	scanner.OnAssessment(srv.Assessments().Publish)

	if err := scanner.Start(); err != nil {
		log.Fatalf("Failed to start scanner: %v", err)
	}
	scanner.SetScanning(true)
	defer scanner.Stop()

	fmt.Printf("Starting server on %s\n", *addr)
	go func() {
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *noTray {
		select {}
	}

	runTray(scanner, *addr)
}

// runTray wires the scanner into the system tray and blocks until quit.
func runTray(scanner *app.Scanner, addr string) {
	t := tray.New()
	t.OnToggle(scanner.SetScanning)
	t.OnOpenUI(func() {
		openBrowser("http://localhost" + addr)
	})
	t.OnQuit(func() {
		scanner.Stop()
	})

	scanner.OnCapture(func(captures []*store.Capture) {
		if len(captures) > 0 {
			c := captures[0]
			t.SetLastCapture(fmt.Sprintf("%dcm, %d%% aligned", c.DistanceCm, c.AlignmentPercent))
		}
	})

	t.Run()
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.hastarekha/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".hastarekha", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
