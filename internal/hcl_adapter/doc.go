// Package hcl_adapter loads build descriptors written in HCL.
//
// A descriptor holds exactly one build block:
//
//	build {
//	  entity_folder    = "config"
//	  output_directory = "target/custom-artifacts"
//	  output_file      = "deploy.xml"
//	  token_file       = "tokens/prod.properties"
//	  mode             = "inline"
//	  tokens = {
//	    "@@@ENV@@@" = env("DEPLOY_ENV", "dev")
//	  }
//	}
//
// Attribute values may call env(name[, fallback]) to read environment
// variables.
package hcl_adapter
