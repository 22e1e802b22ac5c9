package stegimg

import "github.com/bodgit/stegimg/lsb"

// Decode recovers the message hidden in the image in imageFile. If textFile
// is not empty the message is also saved to it.
func (s *Stegimg) Decode(imageFile, textFile string) (string, error) {
	m, sha, err := openImage(imageFile)
	if err != nil {
		return "", err
	}

	var entry *Entry
	if s.journal != nil {
		if entry, err = s.journal.FindBySHA1(sha); err != nil {
			return "", err
		}
		if entry != nil {
			s.logger.Printf("\"%s\" was encoded as \"%s\" with a %d byte message\n", imageFile, entry.Name, entry.Length)
		}
	}

	msg, err := lsb.Decode(m, s.options.Confirm, lsb.Strict(s.options.Strict))
	if err != nil {
		return "", err
	}
	s.logger.Printf("Decoded %d bytes from \"%s\"\n", len(msg), imageFile)

	if entry != nil && entry.MessageSHA1 != textSHA1(msg) {
		s.logger.Printf("Message in \"%s\" doesn't match the journal\n", imageFile)
	}

	if textFile != "" {
		if err := saveText(textFile, msg); err != nil {
			return msg, err
		}
	}

	return msg, nil
}

// History returns the journal entries, newest first
func (s *Stegimg) History() ([]Entry, error) {
	if s.journal == nil {
		return nil, ErrNoJournal
	}
	return s.journal.History()
}
