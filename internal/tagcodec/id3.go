package tagcodec

import (
	"fmt"
	"strings"

	"github.com/oshokin/id3v2/v2"

	"github.com/tempo-importer/tempo-importer/internal/tagkey"
)

// id3Codec implements Codec over an ID3v2.4 tag, as written to MP3 files.
// Multi-valued TagKeys are joined into a single text frame with a
// configurable separator; keys with no dedicated frame are stored as
// TXXX:<tagkey name> user-defined text frames so every TagKey round-trips.
type id3Codec struct {
	tag       *id3v2.Tag
	separator string
}

func openID3(path string, separator string) (Codec, error) {
	//nolint:exhaustruct // Frames field intentionally omitted; defaults to parsing enabled.
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err) //nolint:errorlint // Wraps a non-error-chain library error.
	}

	if tag == nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, path)
	}

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	return &id3Codec{tag: tag, separator: separator}, nil
}

func (c *id3Codec) Get(key tagkey.Key) []string {
	if key == tagkey.MusicBrainzRecordingID {
		return c.getUFID()
	}

	if role, ok := id3RoleFrames[key]; ok {
		return c.getRoleValue(key, role)
	}

	text := c.getText(key)
	if text == "" {
		return nil
	}

	return strings.Split(text, c.separator)
}

// getText returns the raw (still-joined) text for key, trying its dedicated
// frame first and falling back to the TXXX frame carrying its canonical name.
func (c *id3Codec) getText(key tagkey.Key) string {
	if frameID, ok := id3Keys[key]; ok {
		frame := c.tag.GetTextFrame(frameID)
		if frame.Text != "" {
			return frame.Text
		}
	}

	return c.getUserText(key.String())
}

func (c *id3Codec) getUserText(description string) string {
	for _, framer := range c.tag.GetFrames(c.tag.CommonID("User defined text information frame")) {
		udtf, ok := framer.(id3v2.UserDefinedTextFrame)
		if ok && udtf.Description == description {
			return udtf.Value
		}
	}

	return ""
}

func (c *id3Codec) getUFID() []string {
	for _, framer := range c.tag.GetFrames("UFID") {
		ufid, ok := framer.(id3v2.UFIDFrame)
		if ok && ufid.OwnerIdentifier == id3MBIDFrame {
			return []string{string(ufid.Identifier)}
		}
	}

	return nil
}

// getRoleValue reads an involved-people-list role. TIPL/TMCL is a paired
// role/name list frame that the underlying library does not expose
// structured access to, so this codec stores roles as TXXX:<role> instead;
// Set writes the same representation, so round-trips are stable.
func (c *id3Codec) getRoleValue(_ tagkey.Key, role string) []string {
	text := c.getUserText(role)
	if text == "" {
		return nil
	}

	return strings.Split(text, c.separator)
}

func (c *id3Codec) Set(key tagkey.Key, values []string) error {
	nonEmpty := values[:0:0]

	for _, v := range values {
		if v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}

	if key == tagkey.MusicBrainzRecordingID {
		if len(nonEmpty) == 0 {
			return nil
		}

		c.tag.AddUFIDFrame(id3v2.UFIDFrame{
			OwnerIdentifier: id3MBIDFrame,
			Identifier:      []byte(nonEmpty[0]),
		})

		return nil
	}

	if role, ok := id3RoleFrames[key]; ok {
		c.setUserText(role, strings.Join(nonEmpty, c.separator))
		return nil
	}

	joined := strings.Join(nonEmpty, c.separator)

	if frameID, ok := id3Keys[key]; ok {
		c.tag.DeleteFrames(frameID)
		c.tag.AddTextFrame(frameID, c.tag.DefaultEncoding(), joined)

		return nil
	}

	c.setUserText(key.String(), joined)

	return nil
}

func (c *id3Codec) setUserText(description, value string) {
	c.tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    c.tag.DefaultEncoding(),
		Description: description,
		Value:       value,
	})
}

func (c *id3Codec) Clear() {
	c.tag.DeleteAllFrames()
}

func (c *id3Codec) Pictures() []tagkey.Picture {
	var pictures []tagkey.Picture

	for _, framer := range c.tag.GetFrames(c.tag.CommonID("Attached picture")) {
		pf, ok := framer.(id3v2.PictureFrame)
		if !ok {
			continue
		}

		pictures = append(pictures, tagkey.Picture{
			MIMEType:    pf.MimeType,
			Type:        tagkey.PictureType(pf.PictureType),
			Description: pf.Description,
			Data:        pf.Picture,
		})
	}

	return pictures
}

func (c *id3Codec) SetPictures(pictures []tagkey.Picture) {
	c.tag.DeleteFrames(c.tag.CommonID("Attached picture"))

	for _, picture := range pictures {
		c.tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    c.tag.DefaultEncoding(),
			MimeType:    picture.MIMEType,
			PictureType: byte(picture.Type),
			Description: picture.Description,
			Picture:     picture.Data,
		})
	}
}

func (c *id3Codec) Write(_ string) error {
	defer c.tag.Close() //nolint:errcheck // Close after Save only flushes file handles; Save's error is authoritative.

	return c.tag.Save()
}
