// Package container resolves injectables registered in a bundle and manages
// the lifecycle of their instances.
//
// # Lifecycle
//
// Every injectable is transient unless the metadata table marks it as a
// singleton. A singleton is built once per container and its resolver is
// reused; a discardable singleton may be dropped with Discard and is rebuilt
// on the next read through the same resolver.
//
//	c := container.New(b, nil, table)
//	mailer, err := container.Resolve[*Mailer](c, "Mailer")
//
// # Lazy fields
//
// Dependencies are declared as Ref cells on a struct embedding Injected. A
// cell reads through the container that built its owner, on first Get, so
// two singletons may depend on each other:
//
//	type Orders struct {
//	    container.Injected
//	    Users *container.Ref[*Users]
//	}
//
//	var OrdersInjectable = registry.Of(func() *Orders {
//	    o := &Orders{}
//	    o.Users = container.Inject[*Users](&o.Injected, "Users")
//	    return o
//	})
//
// Once resolved, a cell holding a final value never consults the container
// again; a cell over a discardable singleton keeps forwarding to its
// resolver so it always sees the live instance.
package container
