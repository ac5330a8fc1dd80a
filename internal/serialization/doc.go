// Package serialization provides the .recur checkpoint format for saving and
// loading named parameter matrices.
//
//	Format Structure:
//	  [4 bytes: Magic "RECR"]
//	  [4 bytes: Version (uint32 LE)]
//	  [4 bytes: Flags (uint32 LE)]
//	  [4 bytes: Reserved]
//	  [8 bytes: Header Size (uint64 LE)]
//	  [8 bytes: Data Size (uint64 LE)]
//	  [32 bytes: SHA-256 of the data section]
//	  [Header: JSON metadata]
//	  [Matrix data: float64 LE, row-major, 64-byte aligned]
//
// Only parameter values are stored; gradients are transient and always load
// as zero.
//
// Example usage:
//
//	// Save
//	err := serialization.WriteFile("model.recur", net.StateDict(), serialization.Header{ModelType: "dnn"})
//
//	// Load
//	f, err := serialization.ReadFile("model.recur")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = net.LoadStateDict(f.Matrices)
package serialization
