//Package tuio implements the TUIO 1.1 protocol for tracking touch and
//tangible interaction primitives over OSC.
//
//TUIO describes moving cursors (plain touch points), objects (tagged
//markers) and blobs (amorphous touch regions) across discrete frames sent
//by a sensor. Each frame carries the full attribute state of its entities
//("set"), the authoritative list of present session ids ("alive") and a
//frame sequence number ("fseq") used to drop stale or replayed frames.
//
//The Tracker is the session dispatcher: it consumes decoded OSC packets and
//reconciles them into an add/update/remove event stream, deriving velocity,
//acceleration and rotation kinematics by finite differences between
//successive observations. Consumers receive snapshot copies, never handles
//into the session table.
//
//Consumer example:
//  client := tuio.NewClient("0.0.0.0:3333")
//  client.AddListener(tuio.ListenerFunc(func(e tuio.Event) {
//      fmt.Println(e.Type, e.Profile, e.SessionID)
//  }))
//  client.ListenAndServe()
//
//Producer example:
//  server, _ := tuio.NewServer("localhost:3333")
//  id := server.CreateCursor(tuio.Position{X: 0.5, Y: 0.5})
//  server.SendFrame()
//  server.UpdateCursor(id, tuio.Position{X: 0.6, Y: 0.5})
//  server.SendFrame()
//  server.RemoveCursor(id)
//  server.SendFrame()
package tuio
