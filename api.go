package wavefile

import "fmt"

// FormatChunk returns a copy of the decoded fmt chunk, if available.
func (c *Container) FormatChunk() Format {
	if c == nil || c.Fmt == nil {
		return nil
	}

	return c.Fmt.clone()
}

// RawChunks returns a copy of the preserved chunks no handler decoded.
func (c *Container) RawChunks() []RawChunk {
	if c == nil {
		return nil
	}

	return cloneRawChunks(c.Unknown)
}

// SetRawChunks replaces the preserved chunks with the provided set.
func (c *Container) SetRawChunks(chunks []RawChunk) {
	if c == nil {
		return
	}

	c.Unknown = cloneRawChunks(chunks)
}

// Container returns a copy of the file's container.
func (f *File) Container() *Container {
	if f == nil || f.c == nil {
		return nil
	}

	return f.c.clone()
}

// FormatChunk returns a copy of the file's fmt chunk.
func (f *File) FormatChunk() Format {
	if f == nil {
		return nil
	}

	return f.c.FormatChunk()
}

// RawChunks returns a copy of the file's preserved chunks.
func (f *File) RawChunks() []RawChunk {
	if f == nil {
		return nil
	}

	return f.c.RawChunks()
}

// SetRawChunks replaces the file's preserved chunks.
func (f *File) SetRawChunks(chunks []RawChunk) {
	if f == nil || f.c == nil {
		return
	}

	f.c.SetRawChunks(chunks)
}

// SetContainer replaces the file with a copy of c. The fmt chunk of c must
// describe a supported bit depth.
func (f *File) SetContainer(c *Container) error {
	if c == nil || c.Fmt == nil {
		return fmt.Errorf("%w: fmt", ErrMissingChunk)
	}

	next, err := fromContainer(c.clone())
	if err != nil {
		return err
	}

	*f = *next

	return nil
}
