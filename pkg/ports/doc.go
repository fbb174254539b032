/*
Package ports defines the driven ports (interfaces) of the wireframe engine.

These interfaces decouple the editor from external implementations, allowing
projects to be kept in files, memory, Redis, SQLite or BoltDB.

# Key Interfaces

  - ProjectStore: Responsible for persisting and loading projects by id.
  - DistributedLocker: Provides distributed locking for concurrent project access.
*/
package ports
