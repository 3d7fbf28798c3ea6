// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package confreg is a runtime configuration registry: programs declare the
// configuration keys they need together with a validation spec for each,
// the registry gathers raw values from several layered sources, coerces and
// merges them under a fixed precedence order, and validates the final set
// before the program reads any value.
//
// Configuration is assembled from the following sources, in order (later
// sources override earlier ones key-by-key):
//  1. First local config file
//  2. Second local config file
//  3. Optional "main" config file, whose path is read from the environment
//     variable named by the designated main-file key (CONF___FILE by default)
//  4. Process environment variables
//  5. An optional caller-supplied properties table
//
// Keys are hierarchical ("app.server/http-port") and map bijectively onto
// upper-case environment variable names ("APP__SERVER___HTTP_PORT"); see
// [ParseKey], [EncodeName] and [DecodeName].
//
// The main entry points are [New] to create a registry, [Conf.Declare] to
// register keys, [Conf.Load] to perform the fixed-order load and validation,
// [Conf.Value] and [Conf.Snapshot] to read, and [Conf.WithOverride] to run a
// function under temporary, validated, context-scoped bindings.
package confreg
