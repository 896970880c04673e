package mailer

import (
	"fmt"
	"net/mail"
	"strings"
)

// Compose builds a Message from loose parameters.
// Header lines are parsed the way mail clients write them: address
// headers accept comma-separated lists and "Name <email>" entries,
// Content-Type may carry a charset, unknown headers are kept verbatim.
func Compose(p Params) (*Message, error) {
	msg := NewMessage()
	msg.Subject = p.Subject
	msg.Body = p.Body

	for _, line := range p.Headers {
		if err := applyHeader(msg, line); err != nil {
			return msg, err
		}
	}

	for _, entry := range p.To {
		addrs, err := parseAddressList(entry)
		if err != nil {
			return msg, err
		}
		for _, a := range addrs {
			msg.AddAddress(a.Email, a.Name)
		}
	}

	for _, src := range p.Attachments {
		if strings.TrimSpace(src) == "" {
			continue
		}
		msg.AddAttachment(src, "", "", "", "")
	}

	if !msg.HasRecipients() {
		return msg, ErrNoRecipient
	}

	return msg, nil
}

func applyHeader(msg *Message, line string) error {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return nil
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return nil
	}

	switch strings.ToLower(key) {
	case "from":
		addrs, err := parseAddressList(value)
		if err != nil {
			return err
		}
		msg.From = addrs[0]
	case "cc":
		return addEach(value, msg.AddCC)
	case "bcc":
		return addEach(value, msg.AddBCC)
	case "reply-to":
		return addEach(value, msg.AddReplyTo)
	case "content-type":
		applyContentType(msg, value)
	default:
		msg.Headers[key] = value
	}
	return nil
}

func applyContentType(msg *Message, value string) {
	mediaType, params, _ := strings.Cut(value, ";")
	ct := ContentType(strings.ToLower(strings.TrimSpace(mediaType)))
	if ct.IsValid() {
		msg.ContentType = ct
	}
	for param := range strings.SplitSeq(params, ";") {
		k, v, ok := strings.Cut(param, "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), "charset") {
			msg.Charset = strings.Trim(strings.TrimSpace(v), `"`)
		}
	}
}

func addEach(value string, add func(email, name string)) error {
	addrs, err := parseAddressList(value)
	if err != nil {
		return err
	}
	for _, a := range addrs {
		add(a.Email, a.Name)
	}
	return nil
}

func parseAddressList(value string) ([]Address, error) {
	list, err := mail.ParseAddressList(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, value, err)
	}
	out := make([]Address, 0, len(list))
	for _, a := range list {
		out = append(out, Address{Email: a.Address, Name: a.Name})
	}
	return out, nil
}
