// Package io reads project documents and writes analysis results.
//
// # Project Documents
//
// A project document is what a source front end produces for one analysis
// run: every module with its statements in source order, the pairs of
// statements that are control-flow exclusive, and optionally the answers of
// a module resolver. Documents are JSON or YAML:
//
//	{
//	  "project": "app",
//	  "modules": [{
//	    "name": "app.views",
//	    "file": "app/views.py",
//	    "absolute_import": true,
//	    "statements": [
//	      {"id": 1, "kind": "import", "line": 1, "names": [{"name": "os"}]},
//	      {"id": 2, "kind": "try", "line": 2, "contains_import": true},
//	      {"id": 3, "kind": "import", "line": 3, "body": "try-2", "depth": 1,
//	       "names": [{"name": "simplejson", "as": "json"}]},
//	      {"id": 4, "kind": "import", "line": 5, "body": "except-2", "depth": 1,
//	       "names": [{"name": "json"}], "guarded_by": ["ImportError"]}
//	    ],
//	    "exclusive": [[3, 4]]
//	  }],
//	  "resolutions": {
//	    "requests": {"file": "/venv/lib/site-packages/requests/__init__.py"},
//	    "missing": {"error": "No module named missing"}
//	  }
//	}
//
// Statements without a scope belong to the module scope; statements without
// a body are direct children of their scope.
//
// Use [ImportProject] to read a file, choosing the format by extension, or
// [ReadProject] to read from any io.Reader. Both validate the document.
//
// # Results
//
// [WriteJSON] and [ExportJSON] write any result value as indented JSON.
package io
