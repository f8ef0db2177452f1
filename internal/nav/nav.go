// Package nav defines the callback-token grammar used by every inline
// keyboard. Tokens are colon-delimited (`verb:arg1:arg2`) and are
// decoded once, at the boundary, into a closed set of typed actions.
package nav

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAction marks a malformed or unrecognized navigation token.
// The UI never emits such tokens, but decoding must stay non-fatal.
var ErrInvalidAction = errors.New("nav: invalid action")

// Verbs of the token grammar.
const (
	VerbOpenCatalog    = "open_catalog"
	VerbOpenSection    = "open_section"
	VerbOpenSubsection = "open_subsection"
	VerbAdd            = "add"
	VerbOpenCart       = "open_cart"
	VerbCheckout       = "checkout"
	VerbClearCart      = "clear_cart"
	VerbAbout          = "about"
	VerbBackMain       = "back_main"
)

// Action is one decoded navigation request.
type Action interface {
	// Token renders the action back into its wire form.
	Token() string
}

// OpenCatalog shows a page of the section listing.
type OpenCatalog struct {
	Page int
}

// OpenSection shows a page of one section's subsections.
type OpenSection struct {
	SectionID int64
	Page      int
}

// OpenSubsection shows a page of one subsection's products.
type OpenSubsection struct {
	SubsectionID int64
	Page         int
}

// AddToCart adds one unit of a product, then re-renders the product
// page the user was looking at.
type AddToCart struct {
	ProductID    int64
	SubsectionID int64
	Page         int
}

// OpenCart shows the cart screen.
type OpenCart struct{}

// Checkout starts the checkout dialogue.
type Checkout struct{}

// ClearCart empties the cart.
type ClearCart struct{}

// About shows the store description.
type About struct{}

// BackMain returns to the main menu.
type BackMain struct{}

// Token renders `open_catalog:<page>`.
func (a OpenCatalog) Token() string { return join(VerbOpenCatalog, int64(a.Page)) }

// Token renders `open_section:<sectionId>:<page>`.
func (a OpenSection) Token() string { return join(VerbOpenSection, a.SectionID, int64(a.Page)) }

// Token renders `open_subsection:<subsectionId>:<page>`.
func (a OpenSubsection) Token() string { return join(VerbOpenSubsection, a.SubsectionID, int64(a.Page)) }

// Token renders `add:<productId>:<subsectionId>:<page>`.
func (a AddToCart) Token() string {
	return join(VerbAdd, a.ProductID, a.SubsectionID, int64(a.Page))
}

// Token renders the bare verb for argument-less actions.
func (OpenCart) Token() string  { return VerbOpenCart }
func (Checkout) Token() string  { return VerbCheckout }
func (ClearCart) Token() string { return VerbClearCart }
func (About) Token() string     { return VerbAbout }
func (BackMain) Token() string  { return VerbBackMain }

func join(verb string, args ...int64) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, verb)
	for _, a := range args {
		parts = append(parts, strconv.FormatInt(a, 10))
	}
	return strings.Join(parts, ":")
}

// arity maps each verb to its argument count.
var arity = map[string]int{
	VerbOpenCatalog:    1,
	VerbOpenSection:    2,
	VerbOpenSubsection: 2,
	VerbAdd:            3,
	VerbOpenCart:       0,
	VerbCheckout:       0,
	VerbClearCart:      0,
	VerbAbout:          0,
	VerbBackMain:       0,
}

// Parse decodes a full token into its action.
func Parse(token string) (Action, error) {
	verb := token
	payload := ""
	if i := strings.IndexByte(token, ':'); i >= 0 {
		verb, payload = token[:i], token[i+1:]
	}
	return Decode(verb, payload)
}

// Decode builds an action from a verb and its colon-joined arguments.
// The split honours the verb's arity so a trailing argument is never
// broken apart further.
func Decode(verb, payload string) (Action, error) {
	n, ok := arity[verb]
	if !ok {
		return nil, fmt.Errorf("%w: unknown verb %q", ErrInvalidAction, verb)
	}

	args, err := parseArgs(payload, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidAction, verb, err)
	}

	switch verb {
	case VerbOpenCatalog:
		return OpenCatalog{Page: int(args[0])}, nil
	case VerbOpenSection:
		return OpenSection{SectionID: args[0], Page: int(args[1])}, nil
	case VerbOpenSubsection:
		return OpenSubsection{SubsectionID: args[0], Page: int(args[1])}, nil
	case VerbAdd:
		return AddToCart{ProductID: args[0], SubsectionID: args[1], Page: int(args[2])}, nil
	case VerbOpenCart:
		return OpenCart{}, nil
	case VerbCheckout:
		return Checkout{}, nil
	case VerbClearCart:
		return ClearCart{}, nil
	case VerbAbout:
		return About{}, nil
	}
	return BackMain{}, nil
}

func parseArgs(payload string, n int) ([]int64, error) {
	if n == 0 {
		if payload != "" {
			return nil, errors.New("unexpected arguments")
		}
		return nil, nil
	}
	if payload == "" {
		return nil, errors.New("missing arguments")
	}
	parts := strings.SplitN(payload, ":", n)
	if len(parts) != n {
		return nil, fmt.Errorf("want %d arguments, got %d", n, len(parts))
	}
	args := make([]int64, n)
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("argument %d is not a non-negative integer", i+1)
		}
		args[i] = v
	}
	return args, nil
}

// Split separates a token into the telebot callback unique (the verb)
// and its payload, the two halves of telebot's `\f<unique>|<payload>`
// callback data.
func Split(token string) (string, string) {
	if i := strings.IndexByte(token, ':'); i >= 0 {
		return token[:i], token[i+1:]
	}
	return token, ""
}
