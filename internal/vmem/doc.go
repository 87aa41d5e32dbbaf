// Package vmem reserves and commits anonymous virtual memory.
//
// A Region is a single private, anonymous mapping obtained once from the
// operating system. Its start address never changes for the lifetime of
// the mapping. Callers either map the whole region read/write up front and
// rely on demand paging, or map it with no access and grant read/write
// permission to page-aligned sub-ranges as they are needed.
//
// Memory inside a Region is invisible to the Go garbage collector. Only
// pointer-free data may be stored there.
package vmem
