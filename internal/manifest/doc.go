// Package manifest finds, loads and parses the tiapp.xml manifest of a
// Titanium project.
//
// # Discovery
//
// The Locator walks from a directory up to the filesystem root and returns
// the nearest tiapp.xml:
//
//	/work/app/src/tiapp.xml   (tested first)
//	/work/app/tiapp.xml
//	/work/tiapp.xml
//	/tiapp.xml                (tested last)
//
// Not finding a manifest is not an error for the Locator; callers decide.
//
// # Usage
//
// Load the nearest manifest, or one at an explicit path:
//
//	t, err := manifest.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !t.Loaded() {
//	    // no tiapp.xml above the working directory
//	}
//
//	t, err = manifest.New(manifest.WithFile("/path/to/tiapp.xml"))
//
// A Tiapp only changes through Load and Parse. Load replaces the file path
// and the document together and keeps the previous pair when it fails.
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrInvalidArgument: a path value was not a string, or parse input was empty
//   - ErrNotFound: no manifest could be resolved or the path does not exist
//   - ErrParse: the XML engine rejected the text (returned as *ParseError)
//   - ErrNotLoaded: metadata was requested from an unloaded Tiapp
package manifest
