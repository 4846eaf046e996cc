package variants

// SelectionState is where a selection sits in its lifecycle.
type SelectionState int

const (
	Empty SelectionState = iota
	Partial
	Complete
)

func (s SelectionState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Partial:
		return "partial"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Resolver owns the selection of a single product view. It is not safe
// for concurrent use; each view gets its own Resolver.
type Resolver struct {
	product   *Product
	selection Selection
	index     map[string]*Variant
}

// New returns a resolver for p with an empty selection. p may be nil, in
// which case the resolver declines to resolve anything.
func New(p *Product) *Resolver {
	r := &Resolver{}
	r.Reset(p)
	return r
}

// Reset switches to another product (or reloads the same one) and clears
// the selection.
func (r *Resolver) Reset(p *Product) {
	r.product = p
	r.selection = Selection{}
	r.index = buildIndex(p)
}

// Product returns the product being resolved, possibly nil.
func (r *Resolver) Product() *Product { return r.product }

// Selection returns a copy of the current selection.
func (r *Resolver) Selection() Selection { return r.selection.Clone() }

// HandleOptionChange sets one axis of the selection. Other axes are left
// as they are. Names and values the product does not offer are ignored.
func (r *Resolver) HandleOptionChange(name, value string) {
	opt, ok := r.product.Option(name)
	if !ok || !opt.has(value) {
		return
	}
	r.selection[name] = value
}

// Apply replays every entry of sel through HandleOptionChange in option
// order, e.g. to restore a selection that came from a request.
func (r *Resolver) Apply(sel Selection) {
	if r.product == nil {
		return
	}
	for _, o := range r.product.Options {
		if v, ok := sel[o.Name]; ok {
			r.HandleOptionChange(o.Name, v)
		}
	}
}

func (r *Resolver) State() SelectionState {
	switch {
	case len(r.selection) == 0:
		return Empty
	case r.selection.Complete(r.product):
		return Complete
	default:
		return Partial
	}
}

// MatchingVariant resolves the current selection through the index.
func (r *Resolver) MatchingVariant() *Variant {
	p := r.product
	if p == nil || len(p.Variants) == 0 {
		return nil
	}
	if len(p.Options) == 0 {
		return &p.Variants[0]
	}
	if !r.selection.Complete(p) {
		return nil
	}
	return r.index[comboKey(p.Options, r.selection)]
}

func (r *Resolver) IsOptionValueAvailable(name, value string) bool {
	return IsOptionValueAvailable(r.product, r.selection, name, value)
}

func (r *Resolver) CanAddToCart() bool {
	if r.product == nil {
		return false
	}
	if len(r.product.Options) > 0 && !r.selection.Complete(r.product) {
		return false
	}
	return r.MatchingVariant().InStock()
}

// OptionValueView is one choosable value of an option axis.
type OptionValueView struct {
	Value     string
	Swatch    string
	Selected  bool
	Available bool
}

// OptionView is one option axis with per-value state.
type OptionView struct {
	Name   string
	Values []OptionValueView
}

// View is everything the presentation needs for the current selection.
type View struct {
	Product         *Product
	Selection       Selection
	State           SelectionState
	MatchingVariant *Variant
	Price           PriceSummary
	InStock         bool
	CanAddToCart    bool
	CurrentImage    string
	Options         []OptionView
}

// View derives the read model for the current selection. It is recomputed
// from scratch on every call.
func (r *Resolver) View() View {
	p := r.product
	v := r.MatchingVariant()
	out := View{
		Product:         p,
		Selection:       r.Selection(),
		State:           r.State(),
		MatchingVariant: v,
		Price:           ComputePriceSummary(p, v),
		InStock:         InStock(p, r.selection),
		CanAddToCart:    r.CanAddToCart(),
	}
	if p == nil {
		return out
	}

	switch {
	case v != nil && v.Image != "":
		out.CurrentImage = v.Image
	case len(p.Images) > 0:
		out.CurrentImage = p.Images[0]
	}

	out.Options = make([]OptionView, 0, len(p.Options))
	for _, o := range p.Options {
		ov := OptionView{Name: o.Name, Values: make([]OptionValueView, 0, len(o.Values))}
		for _, val := range o.Values {
			ov.Values = append(ov.Values, OptionValueView{
				Value:     val,
				Swatch:    o.Swatch(val),
				Selected:  r.selection[o.Name] == val,
				Available: r.IsOptionValueAvailable(o.Name, val),
			})
		}
		out.Options = append(out.Options, ov)
	}
	return out
}

func buildIndex(p *Product) map[string]*Variant {
	if p == nil || len(p.Options) == 0 {
		return nil
	}
	idx := make(map[string]*Variant, len(p.Variants))
	for i := range p.Variants {
		v := &p.Variants[i]
		if len(v.OptionValues) != len(p.Options) || !Selection(v.OptionValues).Complete(p) {
			continue
		}
		key := comboKey(p.Options, v.OptionValues)
		if _, dup := idx[key]; !dup {
			idx[key] = v
		}
	}
	return idx
}
