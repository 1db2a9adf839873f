// Package config provides configuration parsing for vtree projects.
//
// The configuration is stored in vtree.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "page": "page.yaml",
//	  "container": "app",
//	  "render": {
//	    "maxComponentDepth": 512,
//	    "events": ["click", "mouseover", "focus", "keydown", "submit", "change"]
//	  },
//	  "preview": {
//	    "host": "localhost",
//	    "port": 4000,
//	    "watch": true
//	  },
//	  "snapshot": {
//	    "dir": "snapshots",
//	    "s3": {
//	      "bucket": "my-previews",
//	      "prefix": "pages/",
//	      "region": "eu-west-1"
//	    }
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "vtree",
//	    "path": "/metrics"
//	  }
//	}
//
// Every field is optional; missing values take the defaults of Default.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Preview:", cfg.PreviewURL())
package config
