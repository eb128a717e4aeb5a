// This file is part of Framechip.
//
// Framechip is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Framechip is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Framechip.  If not, see <https://www.gnu.org/licenses/>.

package emulation

// FeatureReq is used to request the setting of an emulation attribute
// eg. a pause request from the GUI
type FeatureReq string

// FeatureReqData represents the information associated with a FeatureReq. See
// commentary for the defined FeatureReq values for the underlying type.
type FeatureReqData any

// List of valid feature requests. The argument, if there is one, must be of
// the type specified.
//
// Note that, like the name suggests, these are requests, they may or may not
// be satisfied depending on other conditions in the emulation.
const (
	ReqSetPause    FeatureReq = "ReqSetPause"    // bool
	ReqTogglePause FeatureReq = "ReqTogglePause" // nil
	ReqSetBench    FeatureReq = "ReqSetBench"    // bool
	ReqToggleBench FeatureReq = "ReqToggleBench" // nil

	// replace the running worker with a new one running the same program
	ReqReplace FeatureReq = "ReqReplace" // nil

	ReqSaveState FeatureReq = "ReqSaveState" // nil
	ReqLoadState FeatureReq = "ReqLoadState" // nil
)

// Sentinal error returned if emulation does no support requested feature.
const (
	UnsupportedEmulationFeature = "unsupported emulation feature: %v"
	BadFeatureArgument          = "bad argument for emulation feature: %v"
)
