// Package hcltemplate reads and writes project templates in HCL.
//
// A template is a hand-editable alternative to the XML project document.
// Blocks become items in the order they appear:
//
//	build {
//	  platform    = "x64"
//	  manifest    = "AsInvoker"
//	  icon        = "assets/app.ico"
//	  obfuscation = "Special"
//
//	  assembly {
//	    title   = "Setup"
//	    version = "1.0.0.0"
//	  }
//	}
//
//	file "bin/setup.exe" {
//	  drop_location = "Temp"
//	  drop_action   = "Execute"
//	  command_line  = "/quiet"
//	}
//
//	url "https://example.com/tool.zip" {
//	  name = upper("tool.zip")
//	}
//
//	message_box {
//	  title = "Done"
//	  text  = format("Installed %d files", 2)
//	  icon  = "Information"
//	}
//
// Every attribute is optional and falls back to the project or item default.
// Enum values are written by name and matched case-insensitively. Relative
// paths are resolved against the template's directory. Expressions may use
// the variable template_dir and the functions upper, lower, format, join and
// trimspace.
package hcltemplate
