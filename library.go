// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbf

import (
	"fmt"
	"strings"
)

// LibraryInfo is the parsed form of an assembly-qualified library
// name as stored in BinaryLibrary records, for example:
//
//	"System.Drawing, Version=4.0.0.0, Culture=neutral, PublicKeyToken=b03f5f7f11d50a3a"
//
// PublicKeyToken keeps the literal token text; unsigned assemblies
// carry the literal "null".
type LibraryInfo struct {
	Name           string
	Version        string
	Culture        string
	PublicKeyToken string
}

// String reassembles the assembly-qualified form.
func (l LibraryInfo) String() string {
	parts := []string{l.Name}
	if l.Version != "" {
		parts = append(parts, "Version="+l.Version)
	}
	if l.Culture != "" {
		parts = append(parts, "Culture="+l.Culture)
	}
	if l.PublicKeyToken != "" {
		parts = append(parts, "PublicKeyToken="+l.PublicKeyToken)
	}
	return strings.Join(parts, ", ")
}

// ParseLibraryName splits an assembly-qualified name from the library
// table into its parts. The simple name must come first; the
// remaining comma-separated segments are Key=Value properties.
// Version and Culture are required, PublicKeyToken is optional, and
// unknown properties are ignored (assembly names grew properties over
// the years and consumers are expected to skip what they don't know).
func ParseLibraryName(qualified string) (LibraryInfo, error) {
	segments := strings.Split(qualified, ",")
	name := strings.TrimSpace(segments[0])
	if name == "" || strings.Contains(name, "=") {
		return LibraryInfo{}, fmt.Errorf("assembly name %q does not start with a simple name", qualified)
	}
	info := LibraryInfo{Name: name}
	for _, segment := range segments[1:] {
		key, value, found := strings.Cut(strings.TrimSpace(segment), "=")
		if !found {
			return LibraryInfo{}, fmt.Errorf("assembly name %q has malformed property %q", qualified, segment)
		}
		switch key {
		case "Version":
			info.Version = value
		case "Culture":
			info.Culture = value
		case "PublicKeyToken":
			info.PublicKeyToken = value
		}
	}
	if info.Version == "" {
		return LibraryInfo{}, fmt.Errorf("assembly name %q is missing Version", qualified)
	}
	if info.Culture == "" {
		return LibraryInfo{}, fmt.Errorf("assembly name %q is missing Culture", qualified)
	}
	return info, nil
}
