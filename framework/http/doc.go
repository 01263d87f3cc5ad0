// Package http provides the JSON request and response helpers used by the
// container diagnostics endpoints.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	var args map[string]any
//	if err := req.Bind(&args); err != nil && !errors.Is(err, gohttp.ErrEmptyBody) { ... }
//
//	id := req.RouteParam("id")   // chi route parameter
//	v  := req.Query("verbose", "0")
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.Success(data)             // 200 {"data": ...}
//	res.Created(data)             // 201 {"data": ...}
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ServerError()             // 500 {"message": "Server Error."}
//	res.ValidationError(errs)     // 422 {"errors": {"field": ["msg"]}}
package http
