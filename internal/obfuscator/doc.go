// Package obfuscator renames whole directory trees to and from their encoded
// names.
//
// Apply encodes the root (unless already encoded) and then every descendant
// that is not yet encoded. Revert does the opposite. Each rename is one Step
// in an ordered plan; a node is renamed before its children are listed, and
// children are always listed from the node's current path.
//
// Walks are not transactional. The first failure stops the walk and is
// returned as a *WalkError holding the steps that were already committed;
// nothing is rolled back, so the tree may be left partly encoded. Running
// Apply or Revert again on the same root finishes the job, since nodes that
// are already in the wanted form are skipped.
//
// Walks are synchronous and must not run concurrently over overlapping
// subtrees.
package obfuscator
