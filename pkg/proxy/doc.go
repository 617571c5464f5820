/*
Package proxy implements a local HTTP server that relays requests to the Tessie API.

Clients send the same requests they would send to https://api.tessie.com, for example
POST /5YJ3E1EA7KF000000/command/lock, but may omit the Authorization header; the proxy attaches its
configured API key. Commands sent to the same vehicle are serialized.

See the [Tessie API documentation] for available endpoints.

[Tessie API documentation]: https://developer.tessie.com
*/
package proxy
