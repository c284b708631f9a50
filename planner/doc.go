// SPDX-License-Identifier: EPL-2.0

// Package planner decides which files go into which sample chain.
//
// Files whose parent directory or name carries a closed or open hi-hat
// marker are grouped by base name, with the closed takes of a kit placed
// before its open takes, and packed into chains named hats_1, hats_2 and
// so on. Every other file is grouped by its last two directories. Groups
// that do not fit MaxSamplesPerChain are split, so no planned chain ever
// holds more files than the cap.
//
// Classification into drum, bass, lead, loop and one_shot is a best guess
// from names and only feeds metadata.
package planner
