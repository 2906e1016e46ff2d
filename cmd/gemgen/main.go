// cmd/gemgen/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gemgen/internal/builder"
	"gemgen/internal/config"
	"gemgen/internal/scaffold"
	"gemgen/internal/server"
)

type appConfig struct {
	debug  bool
	port   int
	unsafe bool
}

const configFile = "capsule.yaml"

func main() {
	appCfg := appConfig{}
	// Global flags
	flag.BoolVar(&appCfg.debug, "debug", false, "Enable debug mode for verbose error output.")
	flag.IntVar(&appCfg.port, "port", 1965, "Port for the local preview server.")
	flag.BoolVar(&appCfg.unsafe, "unsafe", false, "Disable HTML sanitization in the preview server.")
	flag.Usage = printHelp
	flag.Parse()

	if err := run(appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Operation failed: %v\n", err)
		os.Exit(1)
	}
}

func run(appCfg appConfig) error {
	args := flag.Args()

	opts := builder.BuildOptions{
		Unsafe: appCfg.unsafe,
		Debug:  appCfg.debug,
	}

	var cmd string
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "serve":
		siteCfg, err := config.LoadSiteConfig(configFile)
		if err != nil {
			return err
		}
		buildFunc := func(buildOpts builder.BuildOptions) error {
			return runBuild(siteCfg.ContentDir, siteCfg.OutputDir, siteCfg, buildOpts)
		}
		watchPaths := []string{siteCfg.ContentDir, configFile}
		return server.Run(appCfg.port, siteCfg.OutputDir, watchPaths, buildFunc, opts)

	case "new":
		if len(args) < 3 {
			flag.Usage()
			return nil
		}
		if args[1] == "site" {
			return scaffold.CreateNewSite(args[2])
		}
		if args[1] == "post" {
			siteCfg, err := config.LoadSiteConfig(configFile)
			if err != nil {
				return err
			}
			return scaffold.CreateNewPost(args[2], siteCfg.ContentDir, siteCfg.BlogDir)
		}
		flag.Usage()
		return nil

	case "gen":
		args = args[1:]
		fallthrough

	default:
		// Bare invocation: gemgen [content_dir] [output_dir]
		if len(args) > 2 {
			flag.Usage()
			return nil
		}

		siteCfg, err := config.LoadSiteConfig(configFile)
		if err != nil {
			return err
		}
		contentDir := siteCfg.ContentDir
		outputDir := siteCfg.OutputDir
		if len(args) > 0 {
			contentDir = args[0]
		}
		if len(args) > 1 {
			outputDir = args[1]
		}

		opts.CleanDestination = true
		return runBuild(contentDir, outputDir, siteCfg, opts)
	}
}

// runBuild converts the whole content tree and reports the outcome.
func runBuild(contentDir, outputDir string, siteCfg config.SiteConfig, opts builder.BuildOptions) error {
	fmt.Println("--- Converting content to Gemtext ---")
	fmt.Println("Content directory:", contentDir)
	fmt.Println("Output directory:", outputDir)
	fmt.Println()

	if _, err := os.Stat(contentDir); err != nil {
		return fmt.Errorf("content directory %s: %w", filepath.Clean(contentDir), err)
	}

	fileCount, err := builder.BuildSite(outputDir, contentDir, siteCfg, opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	fmt.Printf("\n✅ Success! Converted %d files.\n", fileCount)
	return nil
}

func printHelp() {
	fmt.Println("gemgen - convert Hugo-style Markdown content into a Gemini capsule")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gemgen [global-flags] [command] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  [content] [output]   Convert content (defaults from capsule.yaml)")
	fmt.Println("  gen [content] [output]  Same as the bare invocation")
	fmt.Println("  serve                Preview the capsule with auto-rebuild")
	fmt.Println("  new site <name>      Create a new capsule scaffold")
	fmt.Println("  new post <title>     Create a new blog post from the archetype")
	fmt.Println()
	fmt.Println("Global Flags:")
	flag.PrintDefaults()
}
