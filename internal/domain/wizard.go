package domain

import "fmt"

// WizardState names a step of the add-asset wizard.
type WizardState string

const (
	// WizardSelectingType: the user is picking an asset type
	// (stocks, crypto, homes, cash, ...).
	WizardSelectingType WizardState = "SELECTING_TYPE"

	// WizardChoosingStocksMethod: stocks or crypto was picked and the
	// user chooses between searching manually and linking a brokerage.
	WizardChoosingStocksMethod WizardState = "CHOOSING_STOCKS_METHOD"

	// WizardSearching: a symbol search is in progress.
	WizardSearching WizardState = "SEARCHING"

	// WizardEditingForm: the user is filling out the asset form.
	WizardEditingForm WizardState = "EDITING_FORM"
)

// Asset types that route through the stocks-method step instead of the
// plain form.
const (
	AssetTypeStocks = "stocks"
	AssetTypeCrypto = "crypto"
)

// AssetWizard is the add-asset dialog state as an explicit value object
// with named states and transition functions. Every transition either
// succeeds or returns an error naming the illegal move; there are no
// ad-hoc boolean flags to drift out of sync.
type AssetWizard struct {
	State     WizardState
	AssetType string
}

// NewAssetWizard returns a wizard at the initial type-selection step.
func NewAssetWizard() *AssetWizard {
	return &AssetWizard{State: WizardSelectingType}
}

// SelectType records the chosen asset type. Stocks and crypto move to
// the method-selection step; every other type goes straight to the form.
func (w *AssetWizard) SelectType(assetType string) error {
	if w.State != WizardSelectingType {
		return w.illegal("select type")
	}
	if assetType == "" {
		return fmt.Errorf("asset type cannot be empty")
	}

	w.AssetType = assetType
	if assetType == AssetTypeStocks || assetType == AssetTypeCrypto {
		w.State = WizardChoosingStocksMethod
	} else {
		w.State = WizardEditingForm
	}
	return nil
}

// ChooseSearch moves from method selection into the symbol search.
func (w *AssetWizard) ChooseSearch() error {
	if w.State != WizardChoosingStocksMethod {
		return w.illegal("choose search")
	}
	w.State = WizardSearching
	return nil
}

// ChooseLink validates that account linking can start from the current
// step. The linking handshake itself leaves the wizard (the browser
// navigates to the external provider), so the state does not change; the
// caller resets the wizard when the user returns.
func (w *AssetWizard) ChooseLink() error {
	if w.State != WizardChoosingStocksMethod {
		return w.illegal("choose link")
	}
	return nil
}

// SelectResult moves from the search into the form once the user picked
// a symbol.
func (w *AssetWizard) SelectResult() error {
	if w.State != WizardSearching {
		return w.illegal("select result")
	}
	w.State = WizardEditingForm
	return nil
}

// Back moves one step towards type selection.
func (w *AssetWizard) Back() error {
	switch w.State {
	case WizardChoosingStocksMethod:
		w.State = WizardSelectingType
		w.AssetType = ""
	case WizardSearching:
		w.State = WizardChoosingStocksMethod
	case WizardEditingForm:
		if w.AssetType == AssetTypeStocks || w.AssetType == AssetTypeCrypto {
			w.State = WizardSearching
		} else {
			w.State = WizardSelectingType
			w.AssetType = ""
		}
	default:
		return w.illegal("go back")
	}
	return nil
}

// Reset returns the wizard to the initial step, dropping the selection.
func (w *AssetWizard) Reset() {
	w.State = WizardSelectingType
	w.AssetType = ""
}

func (w *AssetWizard) illegal(action string) error {
	return fmt.Errorf("cannot %s while in state %s", action, w.State)
}
