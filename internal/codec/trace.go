package codec

import (
	"fmt"

	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
	pbeth "github.com/streamingfast/firehose-ethereum/types/pb/sf/ethereum/type/v2"
)

var callTypes = map[datasource.CallType]pbeth.CallType{
	datasource.CallTypeCall:         pbeth.CallType_CALL,
	datasource.CallTypeCallCode:     pbeth.CallType_CALLCODE,
	datasource.CallTypeDelegateCall: pbeth.CallType_DELEGATE,
	datasource.CallTypeStaticCall:   pbeth.CallType_STATIC,
}

// convertTrace flattens one trace into a call. Suicide and reward traces yield nil.
// Index, parent index and depth are left at zero: the flat trace list carries no nesting.
func convertTrace(tr *datasource.Trace) (*pbeth.Call, error) {
	switch tr.Type {
	case datasource.TraceTypeSuicide, datasource.TraceTypeReward:
		return nil, nil
	case datasource.TraceTypeCreate, datasource.TraceTypeCall:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTraceType, tr.Type)
	}

	if tr.Action == nil {
		return nil, missing("trace.action")
	}

	d := &fieldDecoder{scope: "trace"}
	action := tr.Action

	call := &pbeth.Call{
		Caller:   d.bytes("action.from", d.required("action.from", action.From)),
		Value:    d.bigInt("action.value", d.required("action.value", action.Value)),
		GasLimit: d.quantity("action.gas", d.required("action.gas", action.Gas)),
	}

	if tr.Type == datasource.TraceTypeCreate {
		if tr.Result == nil {
			return nil, missing("trace.result")
		}

		call.CallType = pbeth.CallType_CREATE
		call.Address = d.bytes("result.address", d.required("result.address", tr.Result.Address))
		call.GasConsumed = d.quantity("result.gasUsed", d.required("result.gasUsed", tr.Result.GasUsed))
		call.Input = []byte{}
		call.ReturnData = []byte{}
	} else {
		if action.CallType == nil {
			return nil, missing("trace.action.callType")
		}

		callType, ok := callTypes[*action.CallType]
		if !ok {
			return nil, fmt.Errorf("trace.action.callType: %w: %q", ErrUnknownTraceType, *action.CallType)
		}

		call.CallType = callType
		call.Address = d.bytes("action.to", d.required("action.to", action.To))
		call.Input = d.bytes("action.input", d.required("action.input", action.Input))

		// a call that reverted before producing a result consumed nothing and returned nothing
		call.ReturnData = []byte{}
		if tr.Result != nil {
			call.GasConsumed = d.quantity("result.gasUsed", d.required("result.gasUsed", tr.Result.GasUsed))
			call.ReturnData = d.bytes("result.output", d.required("result.output", tr.Result.Output))
		}
	}

	if d.err != nil {
		return nil, d.err
	}

	call.StatusFailed = tr.Error != nil || tr.RevertReason != nil
	call.StatusReverted = tr.RevertReason != nil

	switch {
	case tr.Error != nil:
		call.FailureReason = *tr.Error
	case tr.RevertReason != nil:
		call.FailureReason = *tr.RevertReason
	}

	return call, nil
}
