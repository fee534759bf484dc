// Package physics integrates the sandbox's bodies under softened Newtonian
// gravity.
//
// [Gravity] holds the force law and a velocity-Verlet step. [Engine] drives
// it against a [body.Document], several steps per animation tick, and keeps a
// short energy history for drift monitoring:
//
//	eng := physics.NewEngine(physics.NewGravity(1, 0.05), 0.001, 10)
//	eng.Tick(doc)
//	fmt.Println(eng.Drift())
package physics
