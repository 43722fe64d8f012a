// Package forge is the Go client for the UEAgentForge editor plugin. It
// speaks to a running Unreal Editor through the Remote Control API's
// single command endpoint and layers the safety protocol the raw endpoint
// lacks: a constitution check before every mutating command, phased
// verification, and transaction bracketing with rollback on failure.
//
// Usage:
//
//	client, err := forge.New(forge.WithHost("127.0.0.1"))
//	if err != nil { ... }
//	defer client.Close()
//
//	err = client.WithTransaction(ctx, "Place props", func(c *forge.Client) error {
//	    res, err := c.SpawnActor(ctx, "/Script/Engine.StaticMeshActor",
//	        forge.Vector{Z: 100}, forge.Rotator{})
//	    if err != nil {
//	        return err
//	    }
//	    if !res.OK {
//	        return fmt.Errorf("spawn failed: %s", res.Err)
//	    }
//	    return nil
//	})
//
// Each call is one blocking request-reply round trip; two calls issued
// sequentially by the same client are observed by the editor in that
// order. A Client is not safe for unsynchronized concurrent use — create
// one client per goroutine.
package forge
