// Package preprocess flattens shading-language source files that use
// inclusion directives into a single directive-free source string.
//
// The dialect extends plain shader source with six directives:
//
//	#version ...         accepted once per session, first encounter wins
//	#include <file>      resolved against the registered include directories
//	#include "file"      resolved relative to the including file
//	#pragma once         suppress re-inclusion of this file, keyed by path
//	#ifndef NAME         open a single-inclusion guard
//	#define NAME         satisfy an open guard (or define an ordinary macro)
//	#endif               close the innermost open guard
//
// Any other line beginning with '#' is passed through untouched, matching the
// permissive handling of native preprocessor directives.
//
// # Components
//
//   - Reader: yields logical lines with comments stripped
//   - Session: the recursive directive parser and its shared state
//   - CollapseNewlines: condenses the flattened output
//   - SourceError: file/line-anchored, caret-pointed diagnostics
//
// # Usage
//
//	sess := preprocess.NewSession(preprocess.Options{
//	    IncludeDirs: []string{"shaders/include"},
//	})
//	flat, err := sess.Process("shaders/lighting.frag")
//	if err != nil {
//	    var se *preprocess.SourceError
//	    if errors.As(err, &se) {
//	        fmt.Println(se.Error()) // caret-pointed diagnostic
//	    }
//	}
//
// A Session is single-use and single-threaded: it is owned by the one call
// that drives it, and recursion into included files shares the same Session
// so guard and pragma state spans the whole inclusion tree. Independent
// sessions may run concurrently.
package preprocess
