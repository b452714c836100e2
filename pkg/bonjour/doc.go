// Package bonjour manages DNS-SD discovery sessions on top of a
// dnssd.Library and a host event loop.
//
// A Client turns the library's handle-and-callback model into four
// operations:
//
// # Advertise
//
// Advertise publishes a service instance under a service type. At most one
// advertisement per service type is active; Unadvertise withdraws it.
//
// # Browse
//
// Browse reports instances of a service type as they appear and disappear.
// The session is persistent: it stays active until Unbrowse or Close, and
// an error returned by the caller's callback does not end it.
//
// # Resolve and ResolveAddress
//
// Resolve turns a browsed instance into host, port and TXT metadata;
// ResolveAddress turns a host name into an IPv4 address. Both are one-shot:
// the session ends right after its first result, success or failure. On
// failure the callback is not invoked and the error goes to Config.OnError.
//
// # Threading
//
// A Client is not safe for concurrent use. Call it before the event loop
// starts or from the loop goroutine: inside callbacks or in functions
// posted to the loop. Callbacks always run on the loop goroutine.
package bonjour
