/*
Package supervisor hosts several independent machines behind per-machine locks.

A fsmgraph.Machine is single-threaded. The Manager serializes every call made
through it on an exclusive lock owned by the target machine, so different
machines tick in parallel while calls to the same machine never interleave.
*/
package supervisor
