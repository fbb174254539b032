/*
Package session manages concurrent access to stored projects.

A Manager keeps one wireframe.Editor per open project, so undo history
survives between requests, and serialises every access to a project id with
reference-counted mutexes. With a ports.DistributedLocker it also coordinates
replicas, reloading projects from the store on each access.
*/
package session
