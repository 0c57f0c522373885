/*
Package ports defines the driven ports (interfaces) of the stateful testing engine.

These interfaces decouple the core algorithms from external implementations,
allowing the engine to work with various value generators and storage backends.

# Key Interfaces

  - ValueSource: Samples argument values and proposes smaller shrink candidates.
  - CounterexampleStore: Persists minimized failing cases so they can be replayed.
*/
package ports
