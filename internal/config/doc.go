// Package config provides configuration parsing for melba projects.
//
// The configuration is stored in melba.yaml at the project root.
// This package handles loading, saving, and validating configuration.
// Saving preserves keys the tool does not manage, so a project can
// keep deployment or tooling sections in the same file.
//
// # Configuration File Structure
//
//	name: my-app
//	version: 0.1.0
//	server:
//	  addr: "localhost:8620"
//	  allowShow: false
//	  heartbeat: 30s
//	toast:
//	  position: bottom-right
//	  theme: light
//	  type: info
//	  duration: 5s
//	  maxVisible: 5
//	  newestOnTop: true
//	  pauseOnHover: true
//	  dismissible: true
//	anim:
//	  preset: slide
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Server.Addr)
package config
