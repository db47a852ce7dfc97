// Copyright 2021 The httpcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the data types describing one logical request:
its configuration (Config), its payloads (Params, Form, Body), its
outcome (Result), and the state of its execution (Execution).

Config, Params and Form are filled in by the caller-facing request
entity, httpcore.Request, before execution, and are not changed while a
request executes.

A Body is a raw POST body whose ownership is part of its type. Owned
copies the caller's bytes, so the caller may reuse its buffer at once.
Borrowed keeps a view of the caller's bytes, which must not change until
the request completes.

	req.SetPostData(request.Owned(buf))
	...
	req.SetPostData(request.Borrowed(bigStaticPayload))

Execution is handed to event handlers and to the fallback decider. You
will typically not allocate Execution instances yourself.
*/
package request
