// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package proxy describes proxy settings, where they come from, and how
// they are applied to a transport.
//
// Settings with Type Auto are not used directly. They mean "let the
// process decide", and a Source resolves them to either the proxy the
// application has configured (the registry proxy) or the proxy detected
// from the environment (the auto proxy). Any other Type is an explicit
// user choice and is used verbatim.
//
// A FallbackState records whether any request in the process has
// succeeded through a Source-resolved proxy. Until one has, a failed
// request may fall back once to the registry proxy.
package proxy
