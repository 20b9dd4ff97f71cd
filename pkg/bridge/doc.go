// Package bridge exposes an orchestrator session to a UI layer.
//
// The Dispatcher maps method names to orchestrator commands and answers
// each call with exactly one Result: a success value, a structured error
// or notImplemented. Asynchronous commands answer when their request
// settles.
//
// The Server carries calls and the four event streams over a websocket:
//
//	-> {"id":1,"type":"call","method":"initializeAndCheck"}
//	<- {"id":1,"type":"result","result":{"success":true}}
//	-> {"id":2,"type":"subscribe","stream":"ranging","args":{"regions":[{"identifier":"lobby"}]}}
//	<- {"type":"event","stream":"ranging","data":{...}}
//
// Clients may offer the "beacon/1" websocket subprotocol; offering only
// unsupported subprotocols is refused.
//
// Plain HTTP routes serve /healthz, /api/status and POST /api/call/{method}.
package bridge
