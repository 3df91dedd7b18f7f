package framing

// Report is the outcome of a successful insert edit.
type Report struct {
	Snapshot *Snapshot
	Match    *Match
}

func (r *Report) Found() bool {
	return r != nil && r.Match != nil
}

// Session follows one editor buffer. It keeps the last snapshot that
// analysed successfully and compares every new insert edit against it.
// A Session is not safe for concurrent use.
type Session struct {
	compiler *Compiler
	finder   FramingIfFinder
	previous *Snapshot
}

func NewSession() *Session {
	return &Session{
		compiler: NewCompiler(),
		previous: EmptySnapshot(),
	}
}

func (s *Session) Previous() *Snapshot {
	return s.previous
}

// Insert analyses the buffer after text was added. When analysis fails the
// previous snapshot is kept and the error is returned.
func (s *Session) Insert(text string) (*Report, error) {
	current, err := s.compiler.CompileString(text)
	if err != nil {
		return nil, err
	}

	match, _ := s.finder.Find(s.previous, current)
	s.previous = current

	return &Report{
		Snapshot: current,
		Match:    match,
	}, nil
}

// Remove analyses the buffer after text was deleted. Deleting text cannot
// frame statements, so no detection is done.
func (s *Session) Remove(text string) error {
	current, err := s.compiler.CompileString(text)
	if err != nil {
		return err
	}

	s.previous = current
	return nil
}

// Reset forgets the buffer history.
func (s *Session) Reset() {
	s.previous = EmptySnapshot()
}
