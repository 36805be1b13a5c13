package submission

import (
	"fmt"

	"github.com/contentstudio/asset-library/pkg/assets"
)

// SelectType fires the select-type -> form-fields transition. The type locks
// on first selection; re-selecting the same type is a no-op, selecting a
// different one is rejected until the draft is saved or cancelled.
func (d *Draft) SelectType(t assets.ApplicationType) error {
	if !t.Valid() {
		return &StateError{
			Code:    "APPLICATION_TYPE_INVALID",
			Step:    d.Step,
			Message: fmt.Sprintf("unknown application type %q", t),
		}
	}
	if d.ApplicationType != "" {
		if d.ApplicationType != t {
			return &StateError{
				Code:    "APPLICATION_TYPE_LOCKED",
				Step:    d.Step,
				Message: fmt.Sprintf("application type is locked to %q for this draft", d.ApplicationType),
			}
		}
		if d.Step == StepSelectType {
			d.Step = StepFormFields
		}
		return nil
	}

	d.ApplicationType = t
	switch t {
	case assets.ApplicationWeb:
		d.web = &WebFields{}
	case assets.ApplicationSEO:
		d.seo = &SEOFields{}
	case assets.ApplicationSMM:
		d.smm = &SMMFields{}
	}
	d.Step = StepFormFields
	return nil
}

// Advance moves the draft forward one step. The web branch embeds its own
// upload dropzone inside form-fields and skips the explicit upload step;
// entering asset-details from upload-file is gated on the asset type being
// set. A rejected transition leaves the draft where it was.
func (d *Draft) Advance() error {
	switch d.Step {
	case StepSelectType:
		return &StateError{
			Code:    "APPLICATION_TYPE_REQUIRED",
			Step:    d.Step,
			Message: "select an application type to continue",
		}
	case StepFormFields:
		if d.ApplicationType == assets.ApplicationWeb {
			d.Step = StepAssetDetails
			return nil
		}
		d.Step = StepUploadFile
		return nil
	case StepUploadFile:
		if d.Type == "" {
			return &StateError{
				Code:    "ASSET_TYPE_REQUIRED",
				Step:    d.Step,
				Message: "select an asset type before continuing to asset details",
			}
		}
		d.Step = StepAssetDetails
		return nil
	case StepAssetDetails:
		return &StateError{
			Code:    "AT_FINAL_STEP",
			Step:    d.Step,
			Message: "asset details is the final step; save or submit the draft",
		}
	}
	return &StateError{
		Code:    "STEP_UNKNOWN",
		Step:    d.Step,
		Message: fmt.Sprintf("draft is in unknown step %q", d.Step),
	}
}

// Back moves the draft one step backwards without losing entered data.
func (d *Draft) Back() error {
	switch d.Step {
	case StepSelectType:
		return &StateError{
			Code:    "AT_FIRST_STEP",
			Step:    d.Step,
			Message: "already at the first step",
		}
	case StepFormFields:
		d.Step = StepSelectType
		return nil
	case StepUploadFile:
		d.Step = StepFormFields
		return nil
	case StepAssetDetails:
		if d.ApplicationType == assets.ApplicationWeb {
			d.Step = StepFormFields
		} else {
			d.Step = StepUploadFile
		}
		return nil
	}
	return &StateError{
		Code:    "STEP_UNKNOWN",
		Step:    d.Step,
		Message: fmt.Sprintf("draft is in unknown step %q", d.Step),
	}
}
