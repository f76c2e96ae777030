// Package wavefile reads and writes RIFF, RIFX and RF64 WAVE files in
// memory.
//
// A File holds the decoded container. Build one with FromScratch or load
// one with FromBytes, then read or change samples in place and write it
// back with Bytes:
//
//	f := wavefile.New()
//	if err := f.FromScratch(1, 44100, "16", samples); err != nil {
//		return err
//	}
//	buf, err := f.Bytes()
//
// Integer PCM of 8 to 53 bits, 32- and 64-bit float, IMA ADPCM, A-law and
// mu-law are supported. The conversions (ToBitDepth, ToRIFX, ToIMAADPCM,
// ToALaw, ...) decode compressed data first and keep the metadata chunks.
//
// Container exposes the chunk level view: the fmt chunk, the data bytes and
// the fact, ds64, bext, cart, cue, smpl and LIST chunks. Chunks no handler
// knows are kept as RawChunks so they survive a load and save. A custom
// ChunkRegistry decides which chunks get decoded.
package wavefile
