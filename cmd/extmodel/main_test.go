package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extensionSource = `package com.acme;

import org.mule.sdk.api.annotation.Extension;
import org.mule.sdk.api.annotation.Operations;

@Extension(name = "Echo")
@Operations(EchoOperations.class)
public class EchoExtension {
}
`

const operationsSource = `package com.acme;

public class EchoOperations {

    public String echo(String message) {
        return message;
    }
}
`

func sources(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	}
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "extmodel version "+Version)
}

func TestValidate(t *testing.T) {
	root := sources(t, map[string]string{
		"EchoExtension.java":  extensionSource,
		"EchoOperations.java": operationsSource,
	})

	out, err := execute(t, "validate", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "OK       Echo (com.acme.EchoExtension")
}

func TestValidate_Rejected(t *testing.T) {
	root := sources(t, map[string]string{
		"EchoExtension.java": `package com.acme;

import org.mule.sdk.api.annotation.Extension;

@Extension(name = " ")
public class EchoExtension {
}
`,
	})

	out, err := execute(t, "validate", "--root", root)
	assert.ErrorIs(t, err, errRejected)
	assert.Contains(t, out, "REJECTED com.acme.EchoExtension [illegal_component_shape]")
}

func TestDescribe(t *testing.T) {
	root := sources(t, map[string]string{
		"EchoExtension.java":  extensionSource,
		"EchoOperations.java": operationsSource,
	})

	out, err := execute(t, "describe", "--root", root, "--format", "json")
	require.NoError(t, err)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "Echo", docs[0]["name"])
	assert.Equal(t, "echo", docs[0]["prefix"])
}

func TestDescribe_ToFile(t *testing.T) {
	root := sources(t, map[string]string{
		"EchoExtension.java":  extensionSource,
		"EchoOperations.java": operationsSource,
	})
	target := filepath.Join(t.TempDir(), "echo.nt")

	_, err := execute(t, "describe", "--root", root, "-f", "ntriples", "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/echo/extension/echo>")
}

func TestDescribe_UnknownFormat(t *testing.T) {
	root := sources(t, map[string]string{"EchoExtension.java": extensionSource})

	_, err := execute(t, "describe", "--root", root, "--format", "xml")
	assert.Error(t, err)
}
