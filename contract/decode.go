// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

// Decoding never fails hard: callers probe data against candidate
// interpretations, so an unknown name or a mismatching layout yields nil.

// DecodeReturnData decodes the return data of the named function. Values
// are keyed by position and, when named, by parameter name.
func (c *Contract) DecodeReturnData(name string, data []byte) map[string]any {
	values := c.decodeReturnData(name, data)
	countDecode("output", values != nil)
	return values
}

func (c *Contract) decodeReturnData(name string, data []byte) map[string]any {
	m, ok := c.desc.abi.MethodByName(name)
	if !ok {
		return nil
	}
	values, err := m.DecodeOutput(data)
	if err != nil {
		logger.Trace("no return data interpretation", "method", name, "err", err)
		return nil
	}
	return values
}

// DecodeInputData decodes call data, selector included, as a call of the
// named function.
func (c *Contract) DecodeInputData(name string, data []byte) map[string]any {
	values := c.decodeInputData(name, data)
	countDecode("input", values != nil)
	return values
}

func (c *Contract) decodeInputData(name string, data []byte) map[string]any {
	m, ok := c.desc.abi.MethodByName(name)
	if !ok {
		return nil
	}
	values, err := m.DecodeInput(data)
	if err != nil {
		logger.Trace("no input interpretation", "method", name, "err", err)
		return nil
	}
	return values
}

// DecodeInput recovers the called function from the selector of data and
// decodes the call. Selectors shared by several functions are not resolved.
func (c *Contract) DecodeInput(data []byte) (string, map[string]any) {
	name, values := c.decodeInput(data)
	countDecode("selector", values != nil)
	return name, values
}

func (c *Contract) decodeInput(data []byte) (string, map[string]any) {
	m, err := c.desc.abi.MethodByInput(data)
	if err != nil {
		return "", nil
	}
	values, err := m.DecodeInput(data)
	if err != nil {
		return "", nil
	}
	return m.Name(), values
}
