// SPDX-License-Identifier: EPL-2.0

// Package export writes built chains to disk.
//
// Each chain becomes one WAV file: 16 and 24 bit chains as integer PCM, 32
// bit chains as IEEE float. A JSON sidecar with the chain metadata, and
// the planner metadata under "plan", is written to the metadata directory
// unless disabled. Both files share the base name given by FileName.
package export
