// Command torcryptoctl exercises the torcrypto facade end to end, the way
// the teacher repository's examples/ directory demonstrates its library.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-i2p/torcrypto"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	if err := torcrypto.Initialize(torcrypto.Options{Accel: torcrypto.AccelOff}); err != nil {
		fmt.Fprintf(os.Stderr, "torcryptoctl: initialize: %v\n", err)
		os.Exit(1)
	}
	defer torcrypto.Teardown()

	var err error
	switch os.Args[1] {
	case "keygen":
		err = cmdKeygen(os.Args[2:])
	case "fingerprint":
		err = cmdFingerprint(os.Args[2:])
	case "dh-agree":
		err = cmdDHAgree(os.Args[2:])
	case "hybrid-encrypt":
		err = cmdHybridEncrypt(os.Args[2:])
	case "hybrid-decrypt":
		err = cmdHybridDecrypt(os.Args[2:])
	case "s2k":
		err = cmdS2K(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "torcryptoctl: %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: torcryptoctl <keygen|fingerprint|dh-agree|hybrid-encrypt|hybrid-decrypt|s2k> [flags]")
}

func cmdKeygen(args []string) error {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	bits := fs.Int("bits", torcrypto.PKBytes*8, "RSA modulus size in bits")
	out := fs.String("out", "", "path to write the PEM private key (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pk := torcrypto.New()
	defer pk.Free()
	if err := pk.Generate(*bits, torcrypto.DefaultPublicExp); err != nil {
		return err
	}
	pem, err := pk.WritePrivateToString()
	if err != nil {
		return err
	}
	if *out == "" {
		fmt.Print(pem)
		return nil
	}
	return pk.WritePrivateToFile(*out)
}

func cmdFingerprint(args []string) error {
	fs := flag.NewFlagSet("fingerprint", flag.ExitOnError)
	in := fs.String("in", "", "path to a PEM private or public key")
	spaced := fs.Bool("spaced", true, "group the fingerprint in 4-character blocks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("missing -in")
	}

	pk := torcrypto.New()
	defer pk.Free()
	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	if err := pk.ReadPrivateFromString(string(data)); err != nil {
		if err2 := pk.ReadPublicFromString(string(data)); err2 != nil {
			return err
		}
	}
	fp, err := pk.GetFingerprint(*spaced)
	if err != nil {
		return err
	}
	fmt.Println(fp)
	return nil
}

func cmdDHAgree(args []string) error {
	fs := flag.NewFlagSet("dh-agree", flag.ExitOnError)
	outLen := fs.Int("len", 40, "derived key material length in bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	alice := torcrypto.NewDH()
	bob := torcrypto.NewDH()

	aliceY := make([]byte, torcrypto.DHBytes)
	bobY := make([]byte, torcrypto.DHBytes)
	if err := alice.GetPublic(aliceY); err != nil {
		return err
	}
	if err := bob.GetPublic(bobY); err != nil {
		return err
	}

	aliceSecret := make([]byte, *outLen)
	bobSecret := make([]byte, *outLen)
	if err := alice.ComputeSecret(bobY, aliceSecret); err != nil {
		return err
	}
	if err := bob.ComputeSecret(aliceY, bobSecret); err != nil {
		return err
	}

	fmt.Printf("alice: %s\n", torcrypto.HexEncode(aliceSecret))
	fmt.Printf("bob:   %s\n", torcrypto.HexEncode(bobSecret))
	if string(aliceSecret) != string(bobSecret) {
		return fmt.Errorf("derived secrets disagree")
	}
	fmt.Println("agreement: ok")
	return nil
}

func cmdHybridEncrypt(args []string) error {
	fs := flag.NewFlagSet("hybrid-encrypt", flag.ExitOnError)
	keyPath := fs.String("key", "", "path to a PEM public key")
	msg := fs.String("msg", "", "message to encrypt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pk := torcrypto.New()
	defer pk.Free()
	data, err := os.ReadFile(*keyPath)
	if err != nil {
		return err
	}
	if err := pk.ReadPublicFromString(string(data)); err != nil {
		return err
	}
	keysize, err := pk.KeySize()
	if err != nil {
		return err
	}
	out := make([]byte, keysize+len(*msg)+torcrypto.CipherKeyLen)
	n, err := pk.HybridEncrypt(out, []byte(*msg), torcrypto.PaddingPKCS1, false)
	if err != nil {
		return err
	}
	fmt.Println(torcrypto.Base64Encode(out[:n]))
	return nil
}

func cmdHybridDecrypt(args []string) error {
	fs := flag.NewFlagSet("hybrid-decrypt", flag.ExitOnError)
	keyPath := fs.String("key", "", "path to a PEM private key")
	ciphertext := fs.String("ct", "", "base64 ciphertext")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pk := torcrypto.New()
	defer pk.Free()
	data, err := os.ReadFile(*keyPath)
	if err != nil {
		return err
	}
	if err := pk.ReadPrivateFromString(string(data)); err != nil {
		return err
	}
	in, err := torcrypto.Base64Decode(*ciphertext)
	if err != nil {
		return err
	}
	out := make([]byte, len(in))
	n, err := pk.HybridDecrypt(out, in, torcrypto.PaddingPKCS1)
	if err != nil {
		return err
	}
	fmt.Println(string(out[:n]))
	return nil
}

func cmdS2K(args []string) error {
	fs := flag.NewFlagSet("s2k", flag.ExitOnError)
	salt := fs.String("salt", "0000000000000000", "16 hex characters of salt")
	count := fs.Uint("count", 0, "iteration-count byte (0-255)")
	secret := fs.String("secret", "", "secret material")
	if err := fs.Parse(args); err != nil {
		return err
	}
	saltBytes, err := torcrypto.HexDecode(*salt)
	if err != nil {
		return err
	}
	if len(saltBytes) != 8 {
		return fmt.Errorf("salt must decode to 8 bytes")
	}
	spec := append(append([]byte{}, saltBytes...), byte(*count))
	out := make([]byte, torcrypto.DigestLen)
	if err := torcrypto.S2K(out, []byte(*secret), spec); err != nil {
		return err
	}
	fmt.Println(torcrypto.HexEncode(out))
	return nil
}
