/*
Package domain contains the core contracts and data model of the stateful testing engine.

It defines the extension points a test author implements (Behavior and Command),
the bound command sequences the engine generates and replays, and the outcome
values produced when a sequence is executed against a system under test. This
package is kept pure and free of I/O, randomness and persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Behavior: creates the model state, the system under test and the command pool.
  - Command: precondition, run, postcondition and nextState over a State and a System.
  - Step / Sequence: commands bound to argument values, replayed in order.
  - Outcome / Failure: the result of executing a sequence, with the failing index and cause.
  - Counterexample: the serializable record of a minimized failing sequence.
  - LifecycleHooks: optional callbacks for observing cycles, commands and shrinking.
*/
package domain
