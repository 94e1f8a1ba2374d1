// Package live mirrors a real browser's URL over a WebSocket so querybind
// bindings can run server-side against it.
//
// A thin JavaScript client sends the initial query string on connect and a
// navigate frame whenever the user moves through history; the server sends
// url frames that the client applies with pushState or replaceState. Each
// connection gets a Session, which implements location.Environment: reads
// come from the server-side mirror of the query string, writes update the
// mirror and queue an outbound frame, and navigation subscribers fire on
// inbound navigate frames.
//
// The application composes its bindings inside the Server's OnSession
// callback, once per connection:
//
//	srv := live.NewServer(func(s *live.Session) {
//	    page := querybind.Number(s, "page", 1, querybind.Min(1))
//	    _ = page
//	})
//	http.ListenAndServe(":8080", srv.Handler())
package live
